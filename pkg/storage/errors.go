package storage

import "errors"

// ErrAccountExists is returned when creating an account whose id is already registered.
var ErrAccountExists = errors.New("account already exists")

// ErrAccountNotFound is returned when an account id is not in the directory.
var ErrAccountNotFound = errors.New("account not found")

// ErrTagNotFound is returned when a destination tag resolves to no account.
var ErrTagNotFound = errors.New("destination tag not found")

// ErrTagAllocationFailed is returned when the tag check-and-set loop exhausts
// its retries. Fatal to the in-flight request only.
var ErrTagAllocationFailed = errors.New("destination tag allocation failed")
