package services

// ServiceContainer bundles the service layer for wiring in app setup.
type ServiceContainer struct {
	AuthService         *AuthService
	UserService         *UserService
	GigService          *GigService
	BidService          *BidService
	HireService         *HireService
	ViewService         *ViewService
	NotificationService *NotificationService
}
