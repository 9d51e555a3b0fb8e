package repositories

import "github.com/vsinha/aim/pkg/domain/entities"

// RevisionMutator edits a hardware revision in place. Returning an error aborts the update.
type RevisionMutator func(rev *entities.HardwareRevision) error

// HardwareRevisionRepository provides access to hardware revisions (BOMs)
type HardwareRevisionRepository interface {
	InsertRevision(rev *entities.HardwareRevision) (*entities.HardwareRevision, error)
	GetRevision(id entities.RevisionID) (*entities.HardwareRevision, error)
	UpdateRevision(id entities.RevisionID, fn RevisionMutator) (*entities.HardwareRevision, error)
	DeleteRevision(id entities.RevisionID) error
	ListRevisions() ([]*entities.HardwareRevision, error)
}
