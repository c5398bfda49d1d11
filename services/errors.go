package services

// ServiceError carries an HTTP status alongside a user-safe message.
// Controllers translate it directly; internal detail stays in the logs.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}
