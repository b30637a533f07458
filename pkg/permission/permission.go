package permission

import (
	"github.com/mpapenbr/race-engineer-service-go/log"
	"github.com/mpapenbr/race-engineer-service-go/pkg/auth"
)

type Permission string

const (
	PermissionWriteRecords Permission = "write-records"
)

type PermissionEvaluator interface {
	HasPermission(a auth.Authentication, perm Permission) bool
}

func NewPermissionEvaluator() PermissionEvaluator {
	if ret, err := NewOpaPermissionEvaluator(); err != nil {
		log.Default().Error("failed to create permission evaluator", log.ErrorField(err))
		return nil
	} else {
		return ret
	}
}
