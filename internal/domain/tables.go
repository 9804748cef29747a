package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpLog{},
	// Warehouse
	&Product{},
	&Client{},
	&WishItem{},
	&WaitEntry{},
	&Invoice{},
	&InvoiceItem{},
}
