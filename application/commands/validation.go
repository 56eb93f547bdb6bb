package commands

import (
	"rollouthq/domain/core/valueobjects"
	pkgerrors "rollouthq/pkg/errors"
	"rollouthq/pkg/utils"
)

// Custom validator tags used on request bodies
const (
	TagProjectStatus   = "projectstatus"
	TagProjectPriority = "projectpriority"
	TagFileType        = "filetype"
)

func init() {
	for tag, values := range map[string][]string{
		TagProjectStatus:   valueobjects.ProjectStatusValues(),
		TagProjectPriority: valueobjects.ProjectPriorityValues(),
		TagFileType:        valueobjects.FileTypeValues(),
	} {
		if err := utils.RegisterOneOf(tag, values); err != nil {
			panic(err)
		}
	}
}

// Shared client messages
const (
	MsgAlbumIDRequired   = "albumId required"
	MsgProjectIDRequired = "projectId required"
	MsgNoFieldsToUpdate  = "no fields to update"
)

func validateStruct(v interface{}) error {
	if err := utils.ValidateStruct(v); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

func requireUser(userID string) error {
	if userID == "" {
		return pkgerrors.NewUnauthorizedError("")
	}
	return nil
}
