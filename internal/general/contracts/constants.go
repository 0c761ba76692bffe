package contracts

// Exchange
const (
	ExchangeRentalManager = "rental-manager-exchange"
)

// Queues
const (
	QueueMotorbikeCommands   = "motorbike-queue"
	QueueMotorbikeRequests   = "motorbike-requests"
	QueueDeliveryManCommands = "delivery-man-queue"
	QueueRentalCommands      = "rental-queue"
	QueueRentalRequests      = "rental-requests"
)

// Entity types used as routing-key prefixes ("<entity_type>.<operation>").
const (
	EntityMotorbike   = "motorbike"
	EntityDeliveryMan = "delivery-man"
	EntityRental      = "rental"
)

// Operations
const (
	OpCreate     = "create"
	OpUpdate     = "update"
	OpDelete     = "delete"
	OpIs2024     = "is2024"
	OpGet        = "get"
	OpGetByPlate = "getbyplate"
	OpGetByID    = "getbyid"
)
