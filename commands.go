package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mahdiarghyani/portfolio/internal/blog"
	"github.com/mahdiarghyani/portfolio/internal/content"
	"github.com/mahdiarghyani/portfolio/internal/pdf"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check content parity between locales",
	Long: `Checks that the English and Persian datasets describe the same projects,
that both locales carry the same UI strings, and that every blog post parses.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := content.Embedded()
		if err != nil {
			return err
		}

		issues := catalog.Check()
		issues = append(issues, content.CheckMessages(messages)...)
		if _, err := blog.Load(os.DirFS(cfg.Blog.ContentDir)); err != nil {
			issues = append(issues, content.Issue{Check: "blog", Detail: err.Error()})
		}

		out := cmd.OutOrStdout()
		for _, issue := range issues {
			fmt.Fprintln(out, issue)
		}
		if len(issues) > 0 {
			return fmt.Errorf("%d content issue(s) found", len(issues))
		}
		fmt.Fprintln(out, "content OK")
		return nil
	},
}

var pdfFlags struct {
	locale  string
	out     string
	baseURL string
}

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Render the resume to a PDF file",
	Long: `Prints the resume page of a running server through headless Chrome.
The server is reached at --url, or pdf.base_url, or server.site_url.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		loc, err := content.ParseLocale(pdfFlags.locale)
		if err != nil {
			return err
		}
		catalog, err := content.Embedded()
		if err != nil {
			return err
		}

		base := firstNonEmpty(pdfFlags.baseURL, cfg.PDF.BaseURL, cfg.Server.SiteURL)
		renderer := &pdf.ChromeRenderer{ExecPath: cfg.PDF.ChromePath, Timeout: cfg.PDF.Timeout}
		svc := pdf.NewService(renderer, base, 1)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.PDF.Timeout+30*time.Second)
		defer cancel()
		data, err := svc.Render(ctx, loc, "")
		if err != nil {
			return err
		}

		out := pdfFlags.out
		if out == "" {
			out = content.PDFFilename(catalog.Resume(content.English).Basics.Name, loc, time.Now())
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

var feedLocale string

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Print the RSS feed of a locale",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		loc, err := content.ParseLocale(feedLocale)
		if err != nil {
			return err
		}
		lib, err := blog.Load(os.DirFS(cfg.Blog.ContentDir))
		if err != nil {
			return err
		}
		rss, err := blog.Feed(loc, lib.Posts(loc), cfg.Server.SiteURL, cfg.Server.SiteName)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rss)
		return nil
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the public page routes for prerendering",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := blog.Load(os.DirFS(cfg.Blog.ContentDir))
		if err != nil {
			return err
		}
		for _, r := range publicRoutes(lib) {
			fmt.Fprintln(cmd.OutOrStdout(), r)
		}
		return nil
	},
}

// publicRoutes lists every static page of every locale followed by the
// published blog posts.
func publicRoutes(lib *blog.Library) []string {
	var routes []string
	for _, loc := range content.Locales {
		routes = append(routes,
			homePath(loc),
			loc.Prefix()+"/resume",
			blog.ListPath(loc),
		)
	}
	return append(routes, lib.Routes()...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	pdfCmd.Flags().StringVarP(&pdfFlags.locale, "locale", "l", "en", "resume locale (en or fa)")
	pdfCmd.Flags().StringVarP(&pdfFlags.out, "out", "o", "", "output file (default: generated resume file name)")
	pdfCmd.Flags().StringVar(&pdfFlags.baseURL, "url", "", "base URL of the running server")
	feedCmd.Flags().StringVarP(&feedLocale, "locale", "l", "en", "feed locale (en or fa)")

	rootCmd.AddCommand(checkCmd, pdfCmd, feedCmd, routesCmd)
}
