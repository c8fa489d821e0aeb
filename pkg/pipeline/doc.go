// Package pipeline sequences the post-build steps for one target platform.
//
// A Pipeline is built once from Options. The host build tool then reports
// the build's platform through Gate and, once output is written, calls Run
// with the output directory. When the gate passed, Run rewrites the
// configured files in the output directory and then mirrors the directory
// into the native project:
//
//	p, err := pipeline.New(pipeline.Options{
//	    RootDir:       "../miniprogram",
//	    SubpackageDir: "packages/shop",
//	    Rewrite: []rewrite.Rule{
//	        {File: "app.json", Transform: rewrite.Replace(`"debug":true`, `"debug":false`)},
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	p.Gate(os.Getenv("UNI_PLATFORM"))
//	return p.Run(ctx, "dist/build/mp-weixin")
//
// Each Run resolves its own output path and hands it to both stages, so
// concurrent runs never observe each other's output directory.
package pipeline
