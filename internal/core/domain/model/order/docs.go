// Package order implements the Order aggregate and its lifecycle.
//
// An order is created Pending, optionally pre-assigned to the agent the
// allocator reserved for it, and then moves forward through Accepted and
// InTransit to Delivered. Rejected transitions are reported as
// errs.ConflictError. The aggregate decides whether an agent's load has to
// change; applying that change is the job of the persistence layer, inside
// the same transaction that stores the order.
package order
