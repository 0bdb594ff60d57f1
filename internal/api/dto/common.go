package dto

// Response is the wire envelope every endpoint answers with. Message holds
// either a human-readable string or the requested payload, matching the
// original client contract.
type Response struct {
	Success bool        `json:"success"`
	Message interface{} `json:"message"`
}

func OK(message interface{}) Response {
	return Response{Success: true, Message: message}
}

func Fail(message interface{}) Response {
	return Response{Success: false, Message: message}
}

// ValidationFail carries field-level detail for schema failures.
type ValidationFail struct {
	Response
	Details map[string]string `json:"details,omitempty"`
}

func FailValidation(details map[string]string) ValidationFail {
	return ValidationFail{
		Response: Fail("Validation failed"),
		Details:  details,
	}
}
