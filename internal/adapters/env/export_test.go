package env

// SetSetenv replaces the function used to set variables.
func (r *Resolver) SetSetenv(fn func(key, value string) error) {
	r.setenv = fn
}
