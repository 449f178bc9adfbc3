// Package user models the two kinds of account the dispatch service knows
// about: customers who place orders and delivery agents who carry them.
//
// A delivery agent has a capacity. currentLoad counts the orders the agent
// holds right now and must stay within [0, maxLoad]. The aggregate only
// reads these counters: they change through relative updates issued by the
// persistence layer inside the transaction that assigns or delivers an
// order, never by writing back a value held in memory.
package user
