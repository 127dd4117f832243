package repository

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/deppfellow/jobly/internal/database"
	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/lib/password"
	"github.com/deppfellow/jobly/internal/lib/utils"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// RepositorySuite runs against a real PostgreSQL database named by
// TEST_DATABASE_URL. Every test starts from the same seed data.
type RepositorySuite struct {
	suite.Suite

	ctx       context.Context
	pool      *pgxpool.Pool
	companies *CompanyRepository
	jobs      *JobRepository
	users     *UserRepository

	jobIDs []int
}

func TestRepositorySuite(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, &RepositorySuite{})
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	dsn := os.Getenv("TEST_DATABASE_URL")

	conn, err := pgx.Connect(s.ctx, dsn)
	s.Require().NoError(err)
	defer conn.Close(s.ctx)

	logger := zerolog.Nop()
	s.Require().NoError(database.RunMigrations(s.ctx, conn, &logger))

	s.pool, err = pgxpool.New(s.ctx, dsn)
	s.Require().NoError(err)

	hasher := password.NewHasher(bcrypt.MinCost)
	s.companies = NewCompanyRepository(s.pool)
	s.jobs = NewJobRepository(s.pool)
	s.users = NewUserRepository(s.pool, hasher)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *RepositorySuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE applications, users, jobs, companies RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)

	for i, c := range []CreateCompanyParams{
		{Handle: "c1", Name: "C1", Description: "Desc1", NumEmployees: utils.Ptr(1), LogoURL: utils.Ptr("http://c1.img")},
		{Handle: "c2", Name: "C2", Description: "Desc2", NumEmployees: utils.Ptr(2), LogoURL: utils.Ptr("http://c2.img")},
		{Handle: "c3", Name: "C3", Description: "Desc3", NumEmployees: utils.Ptr(3), LogoURL: utils.Ptr("http://c3.img")},
	} {
		_, err := s.companies.Create(s.ctx, c)
		s.Require().NoError(err, "company %d", i)
	}

	s.jobIDs = nil
	for _, j := range []CreateJobParams{
		{Title: "Job1", Salary: utils.Ptr(100), Equity: decimal.NewNullDecimal(decimal.RequireFromString("0.1")), CompanyHandle: "c1"},
		{Title: "Job2", Salary: utils.Ptr(200), Equity: decimal.NewNullDecimal(decimal.RequireFromString("0.2")), CompanyHandle: "c1"},
		{Title: "Job3", Salary: utils.Ptr(300), Equity: decimal.NewNullDecimal(decimal.Zero), CompanyHandle: "c1"},
		{Title: "Job4", CompanyHandle: "c1"},
	} {
		job, err := s.jobs.Create(s.ctx, j)
		s.Require().NoError(err)
		s.jobIDs = append(s.jobIDs, job.ID)
	}

	for _, u := range []RegisterUserParams{
		{Username: "u1", Password: "password1", FirstName: "U1F", LastName: "U1L", Email: "user1@user.com"},
		{Username: "u2", Password: "password2", FirstName: "U2F", LastName: "U2L", Email: "user2@user.com"},
	} {
		_, err := s.users.Register(s.ctx, u)
		s.Require().NoError(err)
	}

	_, err = s.users.ApplyForJob(s.ctx, "u1", s.jobIDs[0])
	s.Require().NoError(err)
}

func (s *RepositorySuite) requireStatus(err error, status int) {
	s.Require().Error(err)
	s.Equal(status, errs.StatusOf(err))
}

// ---- companies ----

func (s *RepositorySuite) TestCompanyCreateDuplicate() {
	_, err := s.companies.Create(s.ctx, CreateCompanyParams{Handle: "c1", Name: "Other", Description: "d"})
	s.requireStatus(err, http.StatusBadRequest)
	s.Equal("Duplicate company: c1", err.Error())
}

func (s *RepositorySuite) TestCompanyFindAllFilters() {
	all, err := s.companies.FindAll(s.ctx, CompanyFilter{})
	s.Require().NoError(err)
	s.Len(all, 3)

	byName, err := s.companies.FindAll(s.ctx, CompanyFilter{Name: utils.Ptr("c1")})
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("c1", byName[0].Handle)

	ranged, err := s.companies.FindAll(s.ctx, CompanyFilter{MinEmployees: utils.Ptr(2), MaxEmployees: utils.Ptr(3)})
	s.Require().NoError(err)
	s.Len(ranged, 2)

	none, err := s.companies.FindAll(s.ctx, CompanyFilter{Name: utils.Ptr("nope")})
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *RepositorySuite) TestCompanyGetIncludesJobs() {
	c1, err := s.companies.Get(s.ctx, "c1")
	s.Require().NoError(err)
	s.Require().Len(c1.Jobs, 4)

	first := c1.Jobs[0]
	s.Equal(s.jobIDs[0], first.ID)
	s.Equal("Job1", first.Title)
	s.Require().NotNil(first.Salary)
	s.Equal(100, *first.Salary)
	s.True(first.Equity.Valid)
	s.True(first.Equity.Decimal.Equal(decimal.RequireFromString("0.1")))

	last := c1.Jobs[3]
	s.Equal(s.jobIDs[3], last.ID)
	s.Equal("Job4", last.Title)
	s.Nil(last.Salary)
	s.False(last.Equity.Valid)

	c2, err := s.companies.Get(s.ctx, "c2")
	s.Require().NoError(err)
	s.NotNil(c2.Jobs)
	s.Empty(c2.Jobs)

	_, err = s.companies.Get(s.ctx, "nope")
	s.requireStatus(err, http.StatusNotFound)
}

func (s *RepositorySuite) TestCompanyUpdateAndRemove() {
	data, err := model.FieldsFromJSON(`{"name":"New","numEmployees":10}`)
	s.Require().NoError(err)

	updated, err := s.companies.Update(s.ctx, "c1", data)
	s.Require().NoError(err)
	s.Equal("New", updated.Name)
	s.Equal(10, *updated.NumEmployees)

	_, err = s.companies.Update(s.ctx, "nope", data)
	s.requireStatus(err, http.StatusNotFound)

	s.Require().NoError(s.companies.Remove(s.ctx, "c1"))
	s.requireStatus(s.companies.Remove(s.ctx, "c1"), http.StatusNotFound)

	_, err = s.jobs.Get(s.ctx, s.jobIDs[0])
	s.requireStatus(err, http.StatusNotFound)
}

// ---- jobs ----

func (s *RepositorySuite) TestJobFindAllFilters() {
	withEquity, err := s.jobs.FindAll(s.ctx, JobFilter{HasEquity: true})
	s.Require().NoError(err)
	s.Len(withEquity, 2)

	highPaid, err := s.jobs.FindAll(s.ctx, JobFilter{MinSalary: utils.Ptr(150)})
	s.Require().NoError(err)
	s.Len(highPaid, 2)

	byTitle, err := s.jobs.FindAll(s.ctx, JobFilter{Title: utils.Ptr("job1")})
	s.Require().NoError(err)
	s.Require().Len(byTitle, 1)
	s.True(byTitle[0].Equity.Decimal.Equal(decimal.RequireFromString("0.1")))
}

func (s *RepositorySuite) TestJobCreateUnknownCompany() {
	_, err := s.jobs.Create(s.ctx, CreateJobParams{Title: "J", CompanyHandle: "nope"})
	s.Require().Error(err)
}

func (s *RepositorySuite) TestJobUpdate() {
	data, err := model.FieldsFromJSON(`{"title":"New","equity":"0.5"}`)
	s.Require().NoError(err)

	job, err := s.jobs.Update(s.ctx, s.jobIDs[0], data)
	s.Require().NoError(err)
	s.Equal("New", job.Title)
	s.True(job.Equity.Decimal.Equal(decimal.RequireFromString("0.5")))
	s.Equal("c1", job.CompanyHandle)

	_, err = s.jobs.Update(s.ctx, 0, data)
	s.requireStatus(err, http.StatusNotFound)
}

func (s *RepositorySuite) TestJobGetMissing() {
	_, err := s.jobs.Get(s.ctx, 0)
	s.requireStatus(err, http.StatusNotFound)
	s.Equal("No job: 0", err.Error())
}

func (s *RepositorySuite) TestJobRemove() {
	s.Require().NoError(s.jobs.Remove(s.ctx, s.jobIDs[0]))

	_, err := s.jobs.Get(s.ctx, s.jobIDs[0])
	s.requireStatus(err, http.StatusNotFound)

	s.requireStatus(s.jobs.Remove(s.ctx, s.jobIDs[0]), http.StatusNotFound)
	s.requireStatus(s.jobs.Remove(s.ctx, 0), http.StatusNotFound)

	u1, err := s.users.Get(s.ctx, "u1")
	s.Require().NoError(err)
	s.Empty(u1.JobsApplied)
}

// ---- users ----

func (s *RepositorySuite) TestUserAuthenticate() {
	user, err := s.users.Authenticate(s.ctx, "u1", "password1")
	s.Require().NoError(err)
	s.Equal("u1", user.Username)

	_, err = s.users.Authenticate(s.ctx, "u1", "wrong")
	s.requireStatus(err, http.StatusUnauthorized)
}

func (s *RepositorySuite) TestUserRegisterDuplicate() {
	_, err := s.users.Register(s.ctx, RegisterUserParams{
		Username: "u1", Password: "password", FirstName: "F", LastName: "L", Email: "f@l.com",
	})
	s.requireStatus(err, http.StatusBadRequest)
	s.Equal("Duplicate username: u1", err.Error())

	u1, err := s.users.Get(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("U1F", u1.FirstName)
	s.Equal("user1@user.com", u1.Email)

	_, err = s.users.Authenticate(s.ctx, "u1", "password1")
	s.NoError(err)
}

func (s *RepositorySuite) TestUserGetListsApplications() {
	u1, err := s.users.Get(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal([]int{s.jobIDs[0]}, u1.JobsApplied)

	u2, err := s.users.Get(s.ctx, "u2")
	s.Require().NoError(err)
	s.NotNil(u2.JobsApplied)
	s.Empty(u2.JobsApplied)

	all, err := s.users.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("u1", all[0].Username)
}

func (s *RepositorySuite) TestUserUpdatePassword() {
	data, err := model.FieldsFromJSON(`{"password":"newpassword"}`)
	s.Require().NoError(err)

	_, err = s.users.Update(s.ctx, "u1", data)
	s.Require().NoError(err)

	_, err = s.users.Authenticate(s.ctx, "u1", "newpassword")
	s.NoError(err)
}

func (s *RepositorySuite) TestUserUpdateMissing() {
	data, err := model.FieldsFromJSON(`{"firstName":"New"}`)
	s.Require().NoError(err)

	_, err = s.users.Update(s.ctx, "nope", data)
	s.requireStatus(err, http.StatusNotFound)

	u1, err := s.users.Get(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("U1F", u1.FirstName)
}

func (s *RepositorySuite) TestApplyForJob() {
	app, err := s.users.ApplyForJob(s.ctx, "u2", s.jobIDs[1])
	s.Require().NoError(err)
	s.Equal(s.jobIDs[1], app.JobID)

	_, err = s.users.ApplyForJob(s.ctx, "u2", s.jobIDs[1])
	s.NoError(err)

	_, err = s.users.ApplyForJob(s.ctx, "u2", 0)
	s.requireStatus(err, http.StatusNotFound)

	_, err = s.users.ApplyForJob(s.ctx, "nope", s.jobIDs[1])
	s.requireStatus(err, http.StatusNotFound)
}

func (s *RepositorySuite) TestUserRemove() {
	s.Require().NoError(s.users.Remove(s.ctx, "u1"))
	s.requireStatus(s.users.Remove(s.ctx, "u1"), http.StatusNotFound)
}
