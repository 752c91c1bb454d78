package apperr

// userMessages is the fixed per-type table of user-facing messages.
var userMessages = map[Type]string{
	NetworkError:        "Network connection issue. Please check your internet connection and try again.",
	AuthenticationError: "Authentication required. Please log in and try again.",
	AuthorizationError:  "You do not have permission to perform this action.",
	ValidationError:     "Please check your input and try again.",
	NotFoundError:       "The requested resource was not found.",
	ServerError:         "Server error occurred. Please try again later.",
	TimeoutError:        "Request timed out. Please try again.",
	QuizError:           "Quiz operation failed. Please try again.",
	StudentError:        "Student operation failed. Please try again.",
	GroupError:          "Group operation failed. Please try again.",
	QuestionError:       "Question operation failed. Please try again.",
	ComponentError:      "Something went wrong rendering this view. Please try again.",
}

// UserMessage returns the user-facing message for a taxonomy type.
func UserMessage(t Type) string {
	if msg, ok := userMessages[t]; ok {
		return msg
	}
	return "An unexpected error occurred. Please try again."
}
