package models

import "strings"

type OrderStatus string

const (
	OrderStatusAwaitingApproval OrderStatus = "Awaiting Approval"
	OrderStatusAwaitingPayment  OrderStatus = "Awaiting Payment"
	OrderStatusPaid             OrderStatus = "Paid"
	OrderStatusCancelled        OrderStatus = "Cancelled"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "Active"
	CustomerInactive CustomerStatus = "Inactive"
)

func (s CustomerStatus) Valid() bool {
	return s == CustomerActive || s == CustomerInactive
}

// StatusSet is the closed set of order statuses an admin may assign.
type StatusSet map[OrderStatus]struct{}

func NewStatusSet(extra ...string) StatusSet {
	set := StatusSet{
		OrderStatusAwaitingApproval: {},
		OrderStatusAwaitingPayment:  {},
		OrderStatusPaid:             {},
		OrderStatusCancelled:        {},
	}
	for _, s := range extra {
		s = strings.TrimSpace(s)
		if s != "" {
			set[OrderStatus(s)] = struct{}{}
		}
	}
	return set
}

func (s StatusSet) Allows(status OrderStatus) bool {
	_, ok := s[status]
	return ok
}
