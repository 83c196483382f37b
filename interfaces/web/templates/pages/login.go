package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"qadash/interfaces/web/templates/components/core"
)

// Login renders the sign-in page. errorMsg is shown above the form when a
// previous attempt failed.
func Login(errorMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Sign in · QA Dashboard</title>
<link rel="stylesheet" href="/assets/css/app.css">
</head>
<body class="bg-slate-50 flex min-h-screen items-center justify-center">
<form method="post" action="/login" class="w-full max-w-sm rounded-lg border border-slate-200 bg-white p-6 shadow-sm">
<h1 class="mb-4 text-lg font-semibold">Sign in</h1>`); err != nil {
			return err
		}
		if errorMsg != "" {
			if _, err := fmt.Fprintf(w,
				`<div class="mb-4 rounded-md bg-red-100 px-3 py-2 text-sm text-red-800">%s</div>`,
				core.E(errorMsg)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<label class="mb-2 block text-sm">Email
<input type="email" name="email" required class="mt-1 w-full rounded-md border border-slate-300 px-3 py-2 text-sm">
</label>
<label class="mb-4 block text-sm">Password
<input type="password" name="password" required class="mt-1 w-full rounded-md border border-slate-300 px-3 py-2 text-sm">
</label>
<button type="submit" class="w-full rounded-md bg-blue-600 px-3 py-2 text-sm font-medium text-white">Sign in</button>
</form>
</body>
</html>`)
		return err
	})
}

// AccessDenied renders the tenant guard rejection page. homeSlug is the
// signed-in user's own workspace, offered as the way back.
func AccessDenied(homeSlug string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Access Denied · QA Dashboard</title>
<link rel="stylesheet" href="/assets/css/app.css">
</head>
<body class="bg-slate-50 flex min-h-screen items-center justify-center">
<div class="text-center">
<h1 class="text-2xl font-semibold">Access Denied</h1>
<p class="mt-2 text-sm text-slate-500">You do not have access to this workspace.</p>
<a href="/c/%s/feed" class="mt-4 inline-block rounded-md bg-blue-600 px-4 py-2 text-sm font-medium text-white">Back to your dashboard</a>
</div>
</body>
</html>`, core.E(homeSlug))
		return err
	})
}
