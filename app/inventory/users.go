package inventory

// User is an account entry from the account database.
type User struct {
	// Name - the string a user would type in when logging into the operating system.
	Name string

	// UID - user identifier number.
	UID int

	// GID - group identifier number, which identifies the primary group of the user.
	GID int

	// GECOS - general information about the user, such as their real name and phone number.
	GECOS string

	// HomeDirectory - path to the user's home directory.
	HomeDirectory string

	// Shell - program that is started every time the user logs into the system.
	Shell string
}

// Group is an entry from the group database.
type Group struct {
	// Name of the group.
	Name string

	// GID - group identifier number.
	GID int

	// Members - names of users listed as supplementary members of the group.
	Members []string
}

// HasMember returns true if user is a member of the group, either listed explicitly or through its primary GID.
func (group Group) HasMember(user User) bool {
	if group.GID == user.GID {
		return true
	}

	for _, member := range group.Members {
		if member == user.Name {
			return true
		}
	}

	return false
}
