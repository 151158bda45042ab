package domain

import "strings"

// ExportNode is one node of the export tree. The concrete type is one of
// *Subtree, *FileCopy, *ScriptRun or *ContainerArtifact.
type ExportNode interface {
	exportNode()
}

// ExportEntry is a named child of a Subtree.
type ExportEntry struct {
	Name string
	Node ExportNode
}

// Subtree contributes one directory level. Entries keep declaration order.
type Subtree struct {
	Entries []ExportEntry
}

// FileCopy copies the bytes of a local file.
type FileCopy struct {
	Path string
}

// ScriptRun captures the standard output of a script.
type ScriptRun struct {
	Script string
}

// ContainerArtifact extracts a file from a builder's container.
type ContainerArtifact struct {
	Builder  string
	Resource string
}

func (*Subtree) exportNode()           {}
func (*FileCopy) exportNode()          {}
func (*ScriptRun) exportNode()         {}
func (*ContainerArtifact) exportNode() {}

// SourceKind names the leaf variant an artifact came from.
type SourceKind string

const (
	// SourceFile is a FileCopy leaf.
	SourceFile SourceKind = "file"
	// SourceScript is a ScriptRun leaf.
	SourceScript SourceKind = "script"
	// SourceContainer is a ContainerArtifact leaf.
	SourceContainer SourceKind = "container"
)

// Artifact is one resolved export leaf.
type Artifact struct {
	Path     []string
	Contents []byte
	Source   SourceKind
}

// DisplayPath joins the path segments with slashes.
func (a Artifact) DisplayPath() string {
	return strings.Join(a.Path, "/")
}
