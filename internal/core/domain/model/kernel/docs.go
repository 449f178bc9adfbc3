// Package kernel holds the value objects shared by every aggregate of the
// dispatch domain:
//   - UUID: identifier of users, restaurants and orders
//   - Money: a non-negative amount with two decimal places
package kernel
