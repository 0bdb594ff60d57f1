package dto

const maxQuestionLength = 100

type QuestionCreateRequest struct {
	Message string `json:"message"`
}

func (r QuestionCreateRequest) Validate() map[string]string {
	return validateQuestionMessage(r.Message)
}

type QuestionUpdateRequest struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (r QuestionUpdateRequest) Validate() map[string]string {
	errors := validateQuestionMessage(r.Message)
	if r.ID == "" {
		errors["id"] = "Question id is required"
	}
	return errors
}

type QuestionDeleteRequest struct {
	ID string `json:"id"`
}

func validateQuestionMessage(message string) map[string]string {
	errors := make(map[string]string)
	if message == "" {
		errors["message"] = "Message is required"
	} else if len(message) > maxQuestionLength {
		errors["message"] = "Questions must be of less than 100 characters"
	}
	return errors
}
