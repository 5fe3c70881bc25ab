package app

// MaxRedealsLogged is the redeal count past which the driver logs a warning.
// Redeals themselves are never capped.
const MaxRedealsLogged = 3
