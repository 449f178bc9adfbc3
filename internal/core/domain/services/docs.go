// Package services holds domain services that coordinate more than one
// aggregate.
//
//   - AgentAllocator: reserves the least-loaded delivery agent with spare
//     capacity for a new order
package services
