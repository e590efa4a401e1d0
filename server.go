package main

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/mahdiarghyani/portfolio/internal/analytics"
	"github.com/mahdiarghyani/portfolio/internal/blog"
	"github.com/mahdiarghyani/portfolio/internal/config"
	"github.com/mahdiarghyani/portfolio/internal/content"
	"github.com/mahdiarghyani/portfolio/internal/logfields"
	"github.com/mahdiarghyani/portfolio/internal/metrics"
	"github.com/mahdiarghyani/portfolio/internal/pdf"
)

//go:embed templates/*.html
var templateFS embed.FS

const requestIDHeader = "X-Request-ID"

// homeSections are the landing page sections tracked by the scroll-spy nav.
var homeSections = []string{"hero", "skills", "work", "projects"}

// server holds the dependencies of the HTTP handlers. Optional parts
// (pdf, store) are nil when disabled in the configuration.
type server struct {
	cfg      *config.Config
	catalog  *content.Catalog
	blog     *blog.Library
	pdf      *pdf.Service
	store    *analytics.Store
	tracker  *analytics.Tracker
	janitor  *analytics.Janitor
	mailer   Mailer
	admin    *adminAuth
	recorder metrics.Recorder
	registry *prom.Registry
	now      func() time.Time
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

var templateFuncs = template.FuncMap{
	"t":          translate,
	"resumeDate": content.FormatResumeDate,
	"chipTone":   content.ChipTone,
	"postDate":   blog.FormatDate,
	"linkedIn":   content.LinkedInLabel,
	"firstName":  content.FirstName,
	"join":       strings.Join,
	"sections":   func() string { return strings.Join(homeSections, " ") },
	"printCSS":   func(loc content.Locale) template.CSS { return template.CSS(pdf.PrintCSS(loc)) },
	"localized": func(loc content.Locale, path string) string {
		if path == "/" && loc.Prefix() != "" {
			return loc.Prefix()
		}
		return loc.Prefix() + path
	},
	"otherLocale": func(loc content.Locale) content.Locale {
		if loc == content.Persian {
			return content.English
		}
		return content.Persian
	},
	"digits": func(loc content.Locale, s string) string {
		if loc == content.Persian {
			return content.ASCIIToPersianDigits(s)
		}
		return s
	},
	"readingTime": func(loc content.Locale, minutes int) string {
		s := translate(loc, "blog.readingTime", minutes)
		if loc == content.Persian {
			return content.ASCIIToPersianDigits(s)
		}
		return s
	},
}

func homePath(loc content.Locale) string {
	if p := loc.Prefix(); p != "" {
		return p
	}
	return "/"
}

// routes builds the gin engine with every page, API and admin route.
func (s *server) routes() (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	if s.tracker != nil {
		r.Use(s.tracker.Middleware())
	}
	r.SetHTMLTemplate(tmpl)
	r.Static("/static", s.cfg.Server.StaticDir)

	for _, loc := range content.Locales {
		r.GET(homePath(loc), s.home(loc))
		r.GET(loc.Prefix()+"/resume", s.resume(loc))
		r.GET(blog.ListPath(loc), s.blogList(loc))
		r.GET(blog.FeedPath(loc), s.feed(loc))
		r.GET(blog.ListPath(loc)+"/:slug", s.blogPost(loc))
	}

	api := r.Group("/api")
	api.GET("/portfolio", s.apiPortfolio)
	api.GET("/resume", s.apiResume)
	api.GET("/resume/pdf", s.resumePDF)
	api.GET("/blog", s.apiBlog)

	// HTMX contact form
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.contactSubmit)
	r.GET("/privacy", s.privacy)

	r.GET("/healthz", s.healthz)
	if s.cfg.Metrics.Enabled && s.registry != nil {
		r.GET(s.cfg.Metrics.Path, gin.WrapH(metrics.HTTPHandler(s.registry)))
	}

	if s.store != nil && s.admin != nil {
		s.setupAdminRoutes(r)
	}

	r.NoRoute(s.notFound)
	return r, nil
}

// requestLogger stamps a request ID, logs one line per request and
// records request metrics by route template.
func (s *server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		s.recorder.ObserveHTTPRequest(c.Request.Method, route, status, elapsed)

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		slog.LogAttrs(c.Request.Context(), level, "HTTP request",
			logfields.Method(c.Request.Method),
			logfields.Path(c.Request.URL.Path),
			logfields.Status(status),
			logfields.RequestID(id),
			logfields.DurationMS(float64(elapsed.Microseconds())/1000),
		)
	}
}

// requestLocale reads ?locale= and falls back to Accept-Language.
func requestLocale(c *gin.Context) (content.Locale, error) {
	if q := c.Query("locale"); q != "" {
		return content.ParseLocale(q)
	}
	return content.Negotiate(c.GetHeader("Accept-Language")), nil
}

func pageData(loc content.Locale, h gin.H) gin.H {
	h["locale"] = loc
	h["dir"] = loc.Dir()
	return h
}

func (s *server) home(loc content.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := s.catalog.Portfolio(loc)
		c.HTML(http.StatusOK, "index.html", pageData(loc, gin.H{
			"title":     p.Profile.Name,
			"portfolio": p,
			"offset":    80,
		}))
	}
}

func (s *server) resume(loc content.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := s.catalog.Resume(loc)
		c.HTML(http.StatusOK, "resume.html", pageData(loc, gin.H{
			"title":      res.Basics.Name + " - " + translate(loc, "resume.title"),
			"resume":     res,
			"print":      c.Query("print") == "true",
			"pdfEnabled": s.pdf != nil,
		}))
	}
}

func (s *server) blogList(loc content.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts := s.blog.Posts(loc)
		query, tag := c.Query("q"), c.Query("tag")
		c.HTML(http.StatusOK, "blog.html", pageData(loc, gin.H{
			"title":   translate(loc, "blog.title"),
			"posts":   blog.FilterByTag(blog.FilterBySearch(posts, query), tag),
			"tags":    blog.Tags(posts),
			"query":   query,
			"tag":     tag,
			"feedURL": blog.FeedPath(loc),
		}))
	}
}

func (s *server) blogPost(loc content.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := s.blog.Post(loc, c.Param("slug"))
		if errors.Is(err, blog.ErrNotFound) {
			s.notFound(c)
			return
		}
		if err != nil {
			slog.Error("Error loading post", logfields.Slug(c.Param("slug")), logfields.Error(err))
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		c.HTML(http.StatusOK, "post.html", pageData(loc, gin.H{
			"title": post.Title,
			"post":  post,
		}))
	}
}

func (s *server) feed(loc content.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		rss, err := blog.Feed(loc, s.blog.Posts(loc), s.cfg.Server.SiteURL, s.cfg.Server.SiteName)
		if err != nil {
			slog.Error("Error generating feed", logfields.Locale(loc.String()), logfields.Error(err))
			c.String(http.StatusInternalServerError, "feed unavailable")
			return
		}
		c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
	}
}

func (s *server) apiPortfolio(c *gin.Context) {
	loc, err := requestLocale(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid locale", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.catalog.Portfolio(loc))
}

func (s *server) apiResume(c *gin.Context) {
	loc, err := requestLocale(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid locale", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.catalog.Resume(loc))
}

func (s *server) apiBlog(c *gin.Context) {
	loc, err := requestLocale(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid locale", "message": err.Error()})
		return
	}
	posts := blog.FilterByTag(blog.FilterBySearch(s.blog.Posts(loc), c.Query("q")), c.Query("tag"))
	c.JSON(http.StatusOK, gin.H{"locale": loc, "posts": posts})
}

// resumePDF renders the resume of ?locale= through the headless browser.
// ?download=true switches the disposition to attachment and ?filename=
// overrides the generated name.
func (s *server) resumePDF(c *gin.Context) {
	if s.pdf == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "PDF generation disabled"})
		return
	}
	loc, err := requestLocale(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid locale", "message": err.Error()})
		return
	}
	download := c.Query("download") == "true" || c.Query("download") == "1"

	// The English name keeps the file name ASCII for every locale.
	filename := content.PDFFilename(s.catalog.Resume(content.English).Basics.Name, loc, s.now())
	if q := c.Query("filename"); q != "" {
		filename = pdf.SanitizeFilename(q, filename)
	}

	data, err := s.pdf.Render(c.Request.Context(), loc, requestBaseURL(c, s.cfg))
	if err != nil {
		slog.Error("PDF generation failed", logfields.Locale(loc.String()), logfields.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "PDF generation failed",
			"message": err.Error(),
		})
		return
	}

	if s.store != nil {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 5*time.Second)
		if err := s.store.RecordExport(ctx, c.ClientIP(), loc.String(), download); err != nil {
			slog.Warn("Error recording export", logfields.Error(err))
		}
		cancel()
	}

	c.Header("Content-Disposition", pdf.Disposition(filename, download))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", data)
}

// requestBaseURL is the origin the renderer loads when pdf.base_url is
// unset.
func requestBaseURL(c *gin.Context, cfg *config.Config) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	local := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.Server.Port))
	if a, ok := c.Request.Context().Value(http.LocalAddrContextKey).(net.Addr); ok {
		local = a.String()
	}
	return pdf.BaseURLFromRequest(scheme, c.Request.Host, local)
}

func (s *server) contactForm(c *gin.Context) {
	loc, _ := requestLocale(c)
	c.HTML(http.StatusOK, "contact.html", pageData(loc, gin.H{
		"title": translate(loc, "contact.title"),
	}))
}

// contactSubmit answers with an HTML fragment for HTMX to swap in.
func (s *server) contactSubmit(c *gin.Context) {
	loc, err := content.ParseLocale(c.PostForm("locale"))
	if err != nil {
		loc = content.DefaultLocale
	}
	msg := ContactMessage{
		Name:    c.PostForm("fullName"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}
	if err := msg.Validate(); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", pageData(loc, gin.H{
			"error": translate(loc, "contact.invalid"),
		}))
		return
	}

	if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
		slog.Error("Error sending email", logfields.Error(err))
		c.HTML(http.StatusOK, "contact-error.html", pageData(loc, gin.H{
			"error": translate(loc, "contact.error"),
		}))
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", pageData(loc, gin.H{
		"success": translate(loc, "contact.success"),
	}))
}

func (s *server) privacy(c *gin.Context) {
	loc, _ := requestLocale(c)
	c.HTML(http.StatusOK, "privacy.html", pageData(loc, gin.H{
		"title":     translate(loc, "privacy.title"),
		"retention": s.cfg.Analytics.Retention,
	}))
}

func (s *server) healthz(c *gin.Context) {
	if s.store != nil {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) notFound(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	loc, _ := content.ParseLocale(analytics.LocaleOf(path))
	c.HTML(http.StatusNotFound, "404.html", pageData(loc, gin.H{
		"title": translate(loc, "notFound.title"),
	}))
}
