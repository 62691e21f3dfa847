package trade

import "github.com/jeenmata/impex/internal/domain/shared"

// TableOrders is the remote table holding orders
const TableOrders = "orders"

// OrderRepository persists orders
type OrderRepository = shared.Repository[Order]
