package lifecycle

import "github.com/girmesh03/Task-Manager-V19/internal/domain"

// CascadeEdge declares one parent→child foreign-key relationship used to
// propagate tombstoning. PropagateActor controls whether the deleting actor's
// id is stamped on the children.
type CascadeEdge struct {
	Target         domain.Kind
	ForeignKey     string
	PropagateActor bool
}

// cascades is the declarative cascade table. The walker applies edges
// transitively: tombstoning an organization reaches tasks' activities through
// the department and task edges.
var cascades = map[domain.Kind][]CascadeEdge{
	domain.KindOrganization: {
		{Target: domain.KindDepartment, ForeignKey: "organization_id", PropagateActor: true},
		{Target: domain.KindUser, ForeignKey: "organization_id", PropagateActor: true},
		{Target: domain.KindTask, ForeignKey: "organization_id", PropagateActor: true},
		{Target: domain.KindMaterial, ForeignKey: "organization_id"},
		{Target: domain.KindVendor, ForeignKey: "organization_id"},
		{Target: domain.KindNotification, ForeignKey: "organization_id"},
	},
	domain.KindDepartment: {
		{Target: domain.KindUser, ForeignKey: "department_id", PropagateActor: true},
		{Target: domain.KindTask, ForeignKey: "department_id", PropagateActor: true},
		{Target: domain.KindMaterial, ForeignKey: "department_id"},
	},
	domain.KindTask: {
		{Target: domain.KindTaskActivity, ForeignKey: "task_id"},
		{Target: domain.KindTaskComment, ForeignKey: "task_id"},
		{Target: domain.KindAttachment, ForeignKey: "task_id"},
	},
}

// CascadeEdges returns the declared edges for a kind.
func CascadeEdges(kind domain.Kind) []CascadeEdge {
	return cascades[kind]
}
