package authz

import "github.com/girmesh03/Task-Manager-V19/internal/domain"

// Action is a fine-grained operation checked against the kind matrix.
type Action string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionRestore Action = "restore"
)

// Bucket is the coarse permission granted per scope level.
type Bucket string

const (
	BucketRead   Bucket = "read"
	BucketWrite  Bucket = "write"
	BucketDelete Bucket = "delete"
)

// BucketFor maps fine actions to coarse scope buckets.
func BucketFor(action Action) Bucket {
	switch action {
	case ActionRead:
		return BucketRead
	case ActionDelete:
		return BucketDelete
	default:
		// create, update, restore
		return BucketWrite
	}
}

type bucketSet map[Bucket]bool
type actionSet map[Action]bool

func buckets(bs ...Bucket) bucketSet {
	set := make(bucketSet, len(bs))
	for _, b := range bs {
		set[b] = true
	}
	return set
}

func actions(as ...Action) actionSet {
	set := make(actionSet, len(as))
	for _, a := range as {
		set[a] = true
	}
	return set
}

var fullCRUD = actions(ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionRestore)

// scopeGrants is the role → scope → bucket matrix. The crossOrg row for
// SuperAdmin only ever applies to platform actors because ResolveScope never
// yields crossOrg for anyone else.
var scopeGrants = map[domain.Role]map[Scope]bucketSet{
	domain.RoleSuperAdmin: {
		ScopeOwn:       buckets(BucketRead, BucketWrite, BucketDelete),
		ScopeOwnDept:   buckets(BucketRead, BucketWrite, BucketDelete),
		ScopeCrossDept: buckets(BucketRead, BucketWrite, BucketDelete),
		ScopeCrossOrg:  buckets(BucketRead, BucketWrite, BucketDelete),
	},
	domain.RoleAdmin: {
		ScopeOwn:       buckets(BucketRead, BucketWrite, BucketDelete),
		ScopeOwnDept:   buckets(BucketRead, BucketWrite, BucketDelete),
		ScopeCrossDept: buckets(BucketRead),
	},
	domain.RoleManager: {
		ScopeOwn:       buckets(BucketRead, BucketWrite, BucketDelete),
		ScopeOwnDept:   buckets(BucketRead, BucketWrite),
		ScopeCrossDept: buckets(BucketRead),
	},
	domain.RoleUser: {
		ScopeOwn:     buckets(BucketRead, BucketWrite),
		ScopeOwnDept: buckets(BucketRead),
	},
}

// kindGrants is the role × resource kind × action matrix. HOD roles hold full
// CRUD plus restore; Manager lacks user-delete and vendor-create; User is
// read, update-own, and limited task creation.
var kindGrants = map[domain.Role]map[domain.Kind]actionSet{
	domain.RoleSuperAdmin: {
		domain.KindOrganization: fullCRUD,
		domain.KindDepartment:   fullCRUD,
		domain.KindUser:         fullCRUD,
		domain.KindTask:         fullCRUD,
		domain.KindTaskActivity: fullCRUD,
		domain.KindTaskComment:  fullCRUD,
		domain.KindMaterial:     fullCRUD,
		domain.KindVendor:       fullCRUD,
		domain.KindAttachment:   fullCRUD,
		domain.KindNotification: fullCRUD,
	},
	domain.RoleAdmin: {
		domain.KindOrganization: actions(ActionRead, ActionUpdate),
		domain.KindDepartment:   fullCRUD,
		domain.KindUser:         fullCRUD,
		domain.KindTask:         fullCRUD,
		domain.KindTaskActivity: fullCRUD,
		domain.KindTaskComment:  fullCRUD,
		domain.KindMaterial:     fullCRUD,
		domain.KindVendor:       fullCRUD,
		domain.KindAttachment:   fullCRUD,
		domain.KindNotification: fullCRUD,
	},
	domain.RoleManager: {
		domain.KindOrganization: actions(ActionRead),
		domain.KindDepartment:   actions(ActionRead),
		domain.KindUser:         actions(ActionCreate, ActionRead, ActionUpdate, ActionRestore),
		domain.KindTask:         fullCRUD,
		domain.KindTaskActivity: fullCRUD,
		domain.KindTaskComment:  fullCRUD,
		domain.KindMaterial:     fullCRUD,
		domain.KindVendor:       actions(ActionRead, ActionUpdate, ActionDelete, ActionRestore),
		domain.KindAttachment:   fullCRUD,
		domain.KindNotification: actions(ActionRead, ActionUpdate, ActionDelete),
	},
	domain.RoleUser: {
		domain.KindOrganization: actions(ActionRead),
		domain.KindDepartment:   actions(ActionRead),
		domain.KindUser:         actions(ActionRead, ActionUpdate),
		domain.KindTask:         actions(ActionCreate, ActionRead, ActionUpdate),
		domain.KindTaskActivity: actions(ActionCreate, ActionRead, ActionUpdate),
		domain.KindTaskComment:  actions(ActionCreate, ActionRead, ActionUpdate),
		domain.KindMaterial:     actions(ActionRead),
		domain.KindVendor:       actions(ActionRead),
		domain.KindAttachment:   actions(ActionCreate, ActionRead),
		domain.KindNotification: actions(ActionRead, ActionUpdate),
	},
}
