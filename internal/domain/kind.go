package domain

// Kind identifies one of the tombstone-bearing entity kinds.
type Kind string

const (
	KindOrganization Kind = "ORGANIZATION"
	KindDepartment   Kind = "DEPARTMENT"
	KindUser         Kind = "USER"
	KindTask         Kind = "TASK"
	KindTaskActivity Kind = "TASK_ACTIVITY"
	KindTaskComment  Kind = "TASK_COMMENT"
	KindMaterial     Kind = "MATERIAL"
	KindVendor       Kind = "VENDOR"
	KindAttachment   Kind = "ATTACHMENT"
	KindNotification Kind = "NOTIFICATION"
)

// Kinds lists every entity kind, in cascade-root-first order.
var Kinds = []Kind{
	KindOrganization,
	KindDepartment,
	KindUser,
	KindTask,
	KindTaskActivity,
	KindTaskComment,
	KindMaterial,
	KindVendor,
	KindAttachment,
	KindNotification,
}
