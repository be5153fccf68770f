package user

// UnknownUserName is shown when a record carries neither a name nor an email.
const UnknownUserName = "Unknown User"

// DisplayName formats a record's name fields for display.
func DisplayName(r Record) string {
	first, last := r.FirstName(), r.LastName()
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case r.Email() != "":
		return r.Email()
	default:
		return UnknownUserName
	}
}
