package datas

import (
	"fmt"

	"github.com/iammosespaulr/noms/types"
)

// Field names of the conventional commit Meta struct shape (SPEC_FULL §5,
// grounded on the teacher's go/store/datas/commit_meta_test.go).
const (
	metaNameField        = "name"
	metaEmailField       = "email"
	metaDescriptionField = "description"
)

// CommitMeta carries the author/description metadata conventionally
// stored in a Commit's meta field.
type CommitMeta struct {
	Name        string
	Email       string
	Description string
}

// NewCommitMeta builds a CommitMeta from the given fields.
func NewCommitMeta(name, email, description string) *CommitMeta {
	return &CommitMeta{Name: name, Email: email, Description: description}
}

// ToNomsStruct renders cm as a types.Struct suitable for a Commit's meta
// field.
func (cm *CommitMeta) ToNomsStruct() types.Struct {
	return types.NewStruct("Meta", types.StructData{
		metaNameField:        types.String(cm.Name),
		metaEmailField:       types.String(cm.Email),
		metaDescriptionField: types.String(cm.Description),
	})
}

// CommitMetaFromNomsSt reconstructs a CommitMeta from a types.Struct
// produced by ToNomsStruct.
func CommitMetaFromNomsSt(st types.Struct) (*CommitMeta, error) {
	name, ok := st.MaybeGet(metaNameField)
	if !ok {
		return nil, fmt.Errorf("meta struct missing field %q", metaNameField)
	}
	email, ok := st.MaybeGet(metaEmailField)
	if !ok {
		return nil, fmt.Errorf("meta struct missing field %q", metaEmailField)
	}
	desc, ok := st.MaybeGet(metaDescriptionField)
	if !ok {
		return nil, fmt.Errorf("meta struct missing field %q", metaDescriptionField)
	}
	return &CommitMeta{
		Name:        string(name.(types.String)),
		Email:       string(email.(types.String)),
		Description: string(desc.(types.String)),
	}, nil
}

func (cm *CommitMeta) String() string {
	return fmt.Sprintf("%s <%s>: %s", cm.Name, cm.Email, cm.Description)
}
