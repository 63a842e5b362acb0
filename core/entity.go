package core

// Entity is a unique identifier for one simulated agent
// Live ids are dense in 1..capacity and index directly into component stores;
// freed ids are recycled through the world's free list
type Entity uint32

// NoEntity is the zero id used for empty relationship slots and absent lookups
const NoEntity Entity = 0
