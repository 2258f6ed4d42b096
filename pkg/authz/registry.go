package authz

const (
	RoleTenantAdmin  = "tenant-admin"
	RoleTenantMember = "tenant-member"
	RoleAnonymous    = "anonymous"
)

const (
	ActionRead  = "read"
	ActionWrite = "write"
	ActionPush  = "push"
)

const (
	ObjectOrgSettings   = "settings.org"
	ObjectUserOverrides = "settings.overrides"
)
