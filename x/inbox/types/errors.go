package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Inbox module sentinel errors

var (
	ErrValidationFailed = sdkerrors.Register(ModuleName, 2, "message validation failed")
	ErrInvalidAddress   = sdkerrors.Register(ModuleName, 3, "invalid address")
	ErrInvalidItem      = sdkerrors.Register(ModuleName, 4, "invalid inbox item")
	ErrItemNotFound     = sdkerrors.Register(ModuleName, 5, "inbox item not found")
	ErrPayloadTooLarge  = sdkerrors.Register(ModuleName, 6, "payload exceeds size limit")
)
