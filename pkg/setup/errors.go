package setup

import "errors"

var (
	// Platform errors 🖥️
	ErrUnsupportedPlatform = errors.New("❌ unsupported platform")

	// System tool errors 🔧
	ErrMissingTools = errors.New("❌ required system tools are missing")

	// Identity errors 🔑
	ErrInvalidUsername = errors.New("✘ invalid username")
	ErrKeypairCorrupt  = errors.New("❌ keypair state is corrupt")

	// Prompt errors ⌨️
	ErrPromptClosed = errors.New("❌ input closed before a valid username was entered")
)
