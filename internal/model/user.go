package model

import "time"

// Role names stored in JWT claims.  Administrators and customers live in
// separate credential tables, so the role decides which table an
// operation touches.  The two namespaces are independent: the same
// username may exist as both an admin and a customer.
const (
    RoleAdmin    = "ADMIN"    // maps to the `admin` table
    RoleCustomer = "CUSTOMER" // maps to the `customer` table
)

// ValidRole reports whether the given role is one of the two known
// credential namespaces.  Callers must normalize case before calling.
func ValidRole(role string) bool {
    return role == RoleAdmin || role == RoleCustomer
}

// Credential represents a row in either the `admin` or `customer`
// table.  Which table it came from is carried alongside in the Role
// field rather than in the record itself.
//
// Fields:
//  Username     – primary key within the role's table.
//  PasswordHash – bcrypt hashed password; plaintext is never stored.
//  Role         – ADMIN or CUSTOMER, identifying the source table.
//  CreatedAt    – timestamp of registration.
type Credential struct {
    Username     string    // admin.username / customer.username
    PasswordHash string    // admin.password_hash / customer.password_hash
    Role         string    // source namespace, not a column
    CreatedAt    time.Time // created_at
}
