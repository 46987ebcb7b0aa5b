// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the deskchat TUI.

This package defines the color palette and the Theme type used throughout
the application. All colors use Lip Gloss AdaptiveColor for automatic
light/dark terminal detection.

Create a theme once at startup and share it:

	theme := styles.NewTheme()
	theme.SetSize(width, height)

Status helpers render accessible, shape-annotated messages outside the
TUI (CLI output, diagnostics):

	fmt.Println(styles.RenderSuccess("backend reachable"))
*/
package styles
