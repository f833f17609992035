package user

type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
)

// User carries credentials and role. SellerID is set only for seller
// accounts; it is the id the catalog and fulfillment workflow check
// ownership against.
type User struct {
	ID       int
	Email    string
	Password string
	Role     Role
	SellerID *string
}
