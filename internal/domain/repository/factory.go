package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Sessions() SessionRepository
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Deliveries() DeliveryRepository
}
