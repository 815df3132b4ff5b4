// Package bundle writes launchable application bundles for a website.
//
// A bundle is a directory holding a small launcher script that hands the
// site URL to the platform's opener, the metadata the desktop needs to
// list the application, and optionally the inferred icon in the
// platform's icon format.
//
// Supported layouts:
//   - linux: <dir>/<Name>/ with <exec>.sh, <exec>.desktop and icon.png
//   - darwin: <dir>/<Name>.app/Contents/ with Info.plist, MacOS/<exec>.sh
//     and Resources/icon.icns
//   - windows: <dir>/<Name>/ with <exec>.bat, <exec>.url and icon.ico
//
// No external packaging tools are invoked.
//
// # Usage
//
//	b, err := bundle.ForPlatform(runtime.GOOS, bundle.Options{
//	    IconSize: model.Size{Width: 256, Height: 256},
//	})
//	if err != nil {
//	    return err
//	}
//	path, err := b.Bundle(ctx, bundle.Request{
//	    Dir:  "/apps",
//	    Name: "Example",
//	    URL:  "https://example.com",
//	    Icon: icon, // may be nil
//	})
package bundle
