package email

// SendWelcomeEmail greets a user who just registered.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	return c.SendEmail(
		to,
		"Welcome to Jobly!",
		TemplateWelcome,
		map[string]string{
			"UserFirstName": firstName,
		},
	)
}
