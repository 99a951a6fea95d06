// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authz decides whether a caller may open a resource. It gates
// detail and download only; search results are already restricted to
// approved resources.
package authz

import (
	"errors"

	"github.com/campusware/unihub/pkg/types"
)

// ErrForbidden is returned when the caller may not access the resource.
var ErrForbidden = errors.New("access to this resource is not allowed")

// Caller is the identity the gateway attaches to a request.
type Caller struct {
	ID            string
	Role          string
	DepartmentIDs []string
	CourseIDs     []string
}

// Checker answers allow/deny for one caller and one resource.
type Checker interface {
	Check(caller Caller, r *types.Resource) error
}

// MembershipChecker grants access by the resource's access level: public
// to anyone, department/course to members, private to the uploader. Staff
// see everything.
type MembershipChecker struct{}

// Check returns nil when access is allowed, ErrForbidden otherwise.
func (MembershipChecker) Check(caller Caller, r *types.Resource) error {
	if caller.Role == types.RoleStaff || caller.ID == r.UploaderID {
		return nil
	}

	switch r.AccessLevel {
	case types.AccessPublic:
		return nil
	case types.AccessDepartment:
		if containsAny(caller.DepartmentIDs, r.DepartmentIDs) {
			return nil
		}
	case types.AccessCourse:
		if containsAny(caller.CourseIDs, r.CourseIDs) {
			return nil
		}
	case types.AccessPrivate:
		// Only the uploader, handled above.
	}
	return ErrForbidden
}

func containsAny(have, want []string) bool {
	if len(want) == 0 {
		return false
	}
	set := make(map[string]bool, len(have))
	for _, v := range have {
		set[v] = true
	}
	for _, v := range want {
		if set[v] {
			return true
		}
	}
	return false
}
