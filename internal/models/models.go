package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles a user can hold. A user has exactly one role at a time; a freshly
// registered user has none until an admin assigns one.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleUser   = "user"
)

// Advertisement status values. Anything else is rejected.
const (
	AdStatusUsed    = "used"
	AdStatusNotUsed = "not used"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email    string             `bson:"email" json:"email"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Role     string             `bson:"role,omitempty" json:"role,omitempty"`
	Password string             `bson:"password,omitempty" json:"-"`
}

// CartItem is one row per (medicineId, buyerEmail); repeated adds merge into
// the quantity instead of creating a second row.
type CartItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	MedicineID  string             `bson:"medicineId" json:"medicineId"`
	BuyerEmail  string             `bson:"buyerEmail" json:"buyerEmail"`
	SellerEmail string             `bson:"sellerEmail" json:"sellerEmail"`
	Name        string             `bson:"name" json:"name"`
	Image       string             `bson:"image" json:"image"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Quantity    int                `bson:"quantity" json:"quantity"`
}

// CategoryStat is one row of the per-category order report.
type CategoryStat struct {
	Category string  `bson:"category" json:"category"`
	Quantity int64   `bson:"quantity" json:"quantity"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}
