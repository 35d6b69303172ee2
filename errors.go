package ikescan

import "fmt"

type errKeyExchangeLength struct {
	n int
}

func (e errKeyExchangeLength) Error() string {
	return fmt.Sprintf("key exchange data length %d is not a multiple of 4", e.n)
}

func IsErrKeyExchangeLength(err error) bool {
	_, ok := err.(errKeyExchangeLength)
	return ok
}

type errEmptyTransformSet struct{}

func (e errEmptyTransformSet) Error() string {
	return "transform set finalized without any transforms"
}

func IsErrEmptyTransformSet(err error) bool {
	_, ok := err.(errEmptyTransformSet)
	return ok
}

type errEmptyVendorIDSet struct{}

func (e errEmptyVendorIDSet) Error() string {
	return "vendor id set finalized without any vendor ids"
}

func IsErrEmptyVendorIDSet(err error) bool {
	_, ok := err.(errEmptyVendorIDSet)
	return ok
}
