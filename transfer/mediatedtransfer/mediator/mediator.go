// Package mediator implements the deterministic, side-effect-free
// state-transition function for a single mediated HTLC: Step ingests the
// current MediatorState together with an incoming transfer.StateChange and
// returns a new state and the outbound events an external driver must
// dispatch.
package mediator

// TransitMargin is subtracted from the safe payer timeout on top of the
// payee's reveal timeout. It covers the window in which the payee could
// reveal the secret on its own lock's expiration block: without this
// margin the mediator could be forced to close on-chain exactly because it
// gave the payee no slack to reveal before racing the payer's expiration.
const TransitMargin int64 = 2
