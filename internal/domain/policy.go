package domain

// Operation names one authorizable API operation.
type Operation string

const (
	OpListBlogs  Operation = "blogs.list"
	OpReadBlog   Operation = "blogs.read"
	OpCreateBlog Operation = "blogs.create"
	OpEditBlog   Operation = "blogs.edit"
	OpDeleteBlog Operation = "blogs.delete"
	OpReactBlog  Operation = "blogs.react"

	OpListOrders  Operation = "orders.list"
	OpReadOrder   Operation = "orders.read"
	OpCreateOrder Operation = "orders.create"
	OpUpdateOrder Operation = "orders.update"

	OpListProducts Operation = "products.list"
	OpReadProduct  Operation = "products.read"
	OpWriteProduct Operation = "products.write"

	OpListUsers  Operation = "users.list"
	OpReadUser   Operation = "users.read"
	OpUpdateUser Operation = "users.update"

	OpReloadCatalog Operation = "catalog.reload"
)

type accessRule struct {
	anonymous    bool // allowed without any identity
	admin        bool // requires the admin role
	ownerOrAdmin bool // requires ownership of the resource, or admin
	ownerOnly    bool // requires ownership, admin does not override
	// none of the above set: any authenticated identity
}

// policy is the single authorization table. Every handler goes through
// Authorize; there are no per-route role conditionals.
var policy = map[Operation]accessRule{
	OpListBlogs:  {anonymous: true},
	OpReadBlog:   {anonymous: true},
	OpCreateBlog: {},
	OpEditBlog:   {ownerOrAdmin: true},
	OpDeleteBlog: {ownerOrAdmin: true},
	OpReactBlog:  {},

	OpListOrders:  {admin: true},
	OpReadOrder:   {ownerOrAdmin: true},
	OpCreateOrder: {},
	OpUpdateOrder: {admin: true},

	OpListProducts: {anonymous: true},
	OpReadProduct:  {anonymous: true},
	OpWriteProduct: {admin: true},

	OpListUsers:  {admin: true},
	OpReadUser:   {ownerOnly: true},
	OpUpdateUser: {ownerOnly: true},

	OpReloadCatalog: {admin: true},
}

// Authorize decides whether identity may perform op on a resource owned by
// owner (subject id or email, depending on the resource; empty when the
// operation has no ownership dimension). Returns nil on allow, an
// authentication error when no identity is present, and an authorization
// error when the identity lacks the required role or ownership.
func Authorize(id *Identity, op Operation, owner string) error {
	rule, ok := policy[op]
	if !ok {
		return Forbidden("operation not permitted")
	}

	if rule.anonymous {
		return nil
	}
	if id == nil {
		return Unauthenticated("authentication required")
	}

	switch {
	case rule.admin:
		if !id.IsAdmin() {
			return Forbidden("administrator role required")
		}
	case rule.ownerOrAdmin:
		if !id.IsAdmin() && !id.Owns(owner) {
			return Forbidden("not the owner of this resource")
		}
	case rule.ownerOnly:
		if !id.Owns(owner) {
			return Forbidden("not the owner of this resource")
		}
	}
	return nil
}
