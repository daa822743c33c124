package domain

import "errors"

type Status string

// remember to add new statuses to the validStatuses map
const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var validStatuses = map[Status]struct{}{
	StatusPending:   {},
	StatusShipped:   {},
	StatusDelivered: {},
	StatusCancelled: {},
}

var ErrInvalidStatus = errors.New("invalid order status")

func ToStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := validStatuses[status]; ok {
		return status, nil
	}

	return "", ErrInvalidStatus
}

func Statuses() []Status {
	result := make([]Status, 0, len(validStatuses))
	for status := range validStatuses {
		result = append(result, status)
	}
	return result
}
