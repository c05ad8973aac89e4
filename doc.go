// Package columnar contains the core components of a typed, columnar, in-memory table engine.
// This root package defines the interfaces shared by the engine's packages and implemented
// when extending it: columns of three kinds, the raw values an aggregation consumes, and the
// Aggregator with its three strategy axes. It is a good overview of the engine's key concepts.
//
// Tables and columns live in package frame, structural schemas in package schema, element
// types in package types, the Aggregator composition root in package aggregation, and the
// named statistics in package aggregators.
package columnar
