// Package gateway runs the receive side of the measurement experiment: it
// pulls frames off the radio, decodes them, tracks per-node message loss
// and fans decoded records out to the configured sinks.
//
// Loss detection is passive. Each node stamps its frames with a
// monotonically increasing counter, so a gap between consecutive counters
// from the same node is the number of frames that never arrived. Nothing
// is retransmitted or acknowledged; the gap is recorded and the loop
// moves on.
//
// A frame that fails to decode is logged and dropped. A sink that fails
// is logged and skipped for that record; sink errors never stall the
// receive loop.
package gateway
