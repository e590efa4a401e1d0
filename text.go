package main

import (
	"fmt"

	"github.com/mahdiarghyani/portfolio/internal/content"
)

// messages holds the UI strings of every locale. Both maps must carry
// the same keys; `portfolio check` enforces it.
var messages = map[content.Locale]map[string]string{
	content.English: {
		"site.skip":           "Skip to content",
		"nav.hero":            "About",
		"nav.skills":          "Skills",
		"nav.work":            "Experience",
		"nav.projects":        "Projects",
		"nav.blog":            "Blog",
		"nav.resume":          "Resume",
		"nav.contact":         "Contact",
		"nav.switchLocale":    "فارسی",
		"hero.greeting":       "Hi, I'm %s",
		"skills.title":        "Skills",
		"work.title":          "Experience",
		"work.present":        "Present",
		"education.title":     "Education",
		"projects.title":      "Projects",
		"projects.opensource": "Open source",
		"resume.title":        "Resume",
		"resume.download":     "Download PDF",
		"resume.view":         "View PDF",
		"resume.summary":      "Summary",
		"resume.work":         "Work experience",
		"resume.education":    "Education",
		"resume.skills":       "Skills",
		"resume.languages":    "Languages",
		"resume.projects":     "Projects",
		"resume.certificates": "Certificates",
		"blog.title":          "Blog",
		"blog.search":         "Search posts",
		"blog.allTags":        "All tags",
		"blog.empty":          "No posts found.",
		"blog.readingTime":    "%d min read",
		"blog.updated":        "Updated %s",
		"blog.back":           "All posts",
		"blog.rss":            "RSS feed",
		"contact.title":       "Contact Me",
		"contact.name":        "Full name",
		"contact.email":       "Email",
		"contact.message":     "Message",
		"contact.send":        "Send",
		"contact.success":     "Thank you for your message! I'll get back to you soon.",
		"contact.error":       "Sorry, there was an error sending your message. Please try again later.",
		"contact.invalid":     "Please fill in every field with a valid email address.",
		"privacy.title":       "Privacy",
		"privacy.body":        "Page views are stored with a salted hash of your IP address, never the address itself. Records older than twelve months are deleted automatically. Sending a Do Not Track header disables tracking entirely.",
		"notFound.title":      "Page not found",
		"notFound.body":       "The page you are looking for does not exist.",
		"footer.rights":       "All rights reserved.",
	},
	content.Persian: {
		"site.skip":           "پرش به محتوا",
		"nav.hero":            "درباره",
		"nav.skills":          "مهارت‌ها",
		"nav.work":            "تجربه",
		"nav.projects":        "پروژه‌ها",
		"nav.blog":            "وبلاگ",
		"nav.resume":          "رزومه",
		"nav.contact":         "تماس",
		"nav.switchLocale":    "English",
		"hero.greeting":       "سلام، من %s هستم",
		"skills.title":        "مهارت‌ها",
		"work.title":          "تجربه کاری",
		"work.present":        "اکنون",
		"education.title":     "تحصیلات",
		"projects.title":      "پروژه‌ها",
		"projects.opensource": "متن‌باز",
		"resume.title":        "رزومه",
		"resume.download":     "دانلود PDF",
		"resume.view":         "مشاهده PDF",
		"resume.summary":      "خلاصه",
		"resume.work":         "سوابق کاری",
		"resume.education":    "تحصیلات",
		"resume.skills":       "مهارت‌ها",
		"resume.languages":    "زبان‌ها",
		"resume.projects":     "پروژه‌ها",
		"resume.certificates": "گواهینامه‌ها",
		"blog.title":          "وبلاگ",
		"blog.search":         "جستجوی نوشته‌ها",
		"blog.allTags":        "همه برچسب‌ها",
		"blog.empty":          "نوشته‌ای پیدا نشد.",
		"blog.readingTime":    "%d دقیقه مطالعه",
		"blog.updated":        "به‌روزرسانی %s",
		"blog.back":           "همه نوشته‌ها",
		"blog.rss":            "خوراک RSS",
		"contact.title":       "تماس با من",
		"contact.name":        "نام کامل",
		"contact.email":       "ایمیل",
		"contact.message":     "پیام",
		"contact.send":        "ارسال",
		"contact.success":     "از پیام شما متشکرم! به زودی پاسخ می‌دهم.",
		"contact.error":       "متأسفانه ارسال پیام با خطا مواجه شد. لطفاً بعداً دوباره تلاش کنید.",
		"contact.invalid":     "لطفاً همه فیلدها را با یک ایمیل معتبر پر کنید.",
		"privacy.title":       "حریم خصوصی",
		"privacy.body":        "بازدیدها تنها با هش نمک‌دار نشانی IP ذخیره می‌شوند و خود نشانی هرگز ذخیره نمی‌شود. سوابق قدیمی‌تر از دوازده ماه به طور خودکار حذف می‌شوند. ارسال سرآیند Do Not Track ردیابی را کاملاً غیرفعال می‌کند.",
		"notFound.title":      "صفحه پیدا نشد",
		"notFound.body":       "صفحه‌ای که به دنبال آن هستید وجود ندارد.",
		"footer.rights":       "تمامی حقوق محفوظ است.",
	},
}

// translate looks key up in loc, falling back to English and then to the
// key itself. Extra args are applied with fmt.Sprintf.
func translate(loc content.Locale, key string, args ...any) string {
	msg, ok := messages[loc][key]
	if !ok {
		msg, ok = messages[content.DefaultLocale][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
