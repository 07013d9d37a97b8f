package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Escrow module sentinel errors

var (
	// Validation errors
	ErrValidationFailed = sdkerrors.Register(ModuleName, 2, "message validation failed")
	ErrInvalidAddress   = sdkerrors.Register(ModuleName, 3, "invalid address")
	ErrInvalidAmount    = sdkerrors.Register(ModuleName, 4, "invalid amount")

	// Wallet errors
	ErrWalletNotFound = sdkerrors.Register(ModuleName, 10, "wallet not found")
	ErrWalletExists   = sdkerrors.Register(ModuleName, 11, "wallet already exists")
	ErrNotWalletOwner = sdkerrors.Register(ModuleName, 12, "caller is not the wallet owner")

	// Funds errors
	ErrInsufficientBalance   = sdkerrors.Register(ModuleName, 20, "amount exceeds wallet balance")
	ErrInsufficientUnlocked  = sdkerrors.Register(ModuleName, 21, "amount exceeds unlocked balance")
	ErrInsufficientAllowance = sdkerrors.Register(ModuleName, 22, "amount exceeds spender allowance")
	ErrInsufficientLocked    = sdkerrors.Register(ModuleName, 23, "amount exceeds locked balance")

	// Transfer errors
	ErrTransferFailed = sdkerrors.Register(ModuleName, 30, "value transfer failed")
)
