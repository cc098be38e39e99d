// Package security provides validation, sanitization, and limits for the crontab package.
//
// This package includes:
//   - Input validation for user names, commands and comments
//   - Error message sanitization for text captured from the crontab binary
//   - Clamping for history retention
//   - Security-related constants defining maximum sizes and counts
//
// Most users should import the root package github.com/jdziat/simple-crontab
// which re-exports these functions.
package security
