package domain

// ResourceName returns the engine-side name of a project-scoped image or container.
func ResourceName(project, name string) string {
	return project + "_" + name
}
