package site

const layoutTemplate = `{{ define "layout" }}<!DOCTYPE html>
<html lang="{{ .Site.Lang }}">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Meta.Title }}</title>
    {{- with .Meta.Description }}
    <meta name="description" content="{{ . }}">
    {{- end }}
    {{- if .Meta.Article }}
    <meta property="og:title" content="{{ .Meta.Title }}">
    <meta property="og:description" content="{{ .Meta.Description }}">
    <meta property="og:type" content="article">
    <meta property="article:published_time" content="{{ .Meta.PublishedTime }}">
    {{- end }}
    <script src="https://cdn.tailwindcss.com?plugins=typography"></script>
    {{- if .Site.Stylesheet }}
    <link rel="stylesheet" href="{{ .Site.Stylesheet }}">
    {{- end }}
    <link rel="stylesheet" href="{{ .Site.KaTeX.Stylesheet }}">
    <script defer src="{{ .Site.KaTeX.Script }}"></script>
    <script defer src="{{ .Site.KaTeX.AutoRender }}"></script>
    <script>
        document.addEventListener("DOMContentLoaded", function () {
            renderMathInElement(document.body, {
                delimiters: [
                    {left: "\\[", right: "\\]", display: true},
                    {left: "\\(", right: "\\)", display: false}
                ],
                throwOnError: false
            });
        });
    </script>
    <style>
        pre { border-radius: 0.5rem; }
    </style>
</head>
<body class="antialiased bg-white text-gray-900">
    <div class="flex min-h-screen">
        <aside class="w-64 border-r p-4 hidden md:block">
            <a href="/" class="block font-bold text-xl tracking-tight text-gray-800 mb-4">{{ .Site.Title }}</a>
            <nav class="w-full">
                {{ template "tree" .Tree }}
            </nav>
        </aside>
        <main class="flex-1">
            {{ template "main" . }}
        </main>
    </div>
</body>
</html>
{{ end }}

{{ define "tree" }}
{{- range . }}
    {{- if .IsFolder }}
    <details class="pl-2">
        <summary class="flex items-center gap-2 w-full hover:bg-gray-100 p-2 rounded-md cursor-pointer text-sm">{{ .Name }}</summary>
        <div class="ml-2">{{ template "tree" .Children }}</div>
    </details>
    {{- else }}
    <a href="{{ .Path }}" class="flex items-center gap-2 hover:bg-gray-100 p-2 rounded-md text-sm">{{ .Name }}</a>
    {{- end }}
{{- end }}
{{ end }}`

const homeTemplate = `{{ define "main" }}
<div class="max-w-4xl mx-auto p-4 md:p-8">
    <h1 class="text-2xl md:text-3xl font-bold mb-4 md:mb-8">{{ .Site.Heading }}</h1>
    <div class="grid gap-4 md:gap-6">
        {{- range .Posts }}
        <div class="border rounded-lg p-3 md:p-4 hover:shadow-lg transition">
            <a href="/posts/{{ .Slug }}">
                <h2 class="text-lg md:text-xl font-semibold mb-1 md:mb-2">{{ .Title }}</h2>
                <p class="text-gray-600 mb-3 md:mb-4 text-sm md:text-base">{{ .Description }}</p>
                <div class="flex flex-wrap justify-between text-xs md:text-sm text-gray-500">
                    <div class="flex items-center space-x-3">
                        <span>{{ listDate . }}</span>
                        <span class="font-medium">{{ $.Site.Author }}</span>
                    </div>
                    <span>{{ .Category }}</span>
                </div>
            </a>
        </div>
        {{- end }}
    </div>
</div>
{{ end }}`

const postTemplate = `{{ define "main" }}
<article class="max-w-4xl mx-auto p-8">
    <header class="mb-8">
        <h1 class="text-4xl font-bold mb-2">{{ .Post.Title }}</h1>
        <div class="flex gap-4 text-gray-500">
            <time datetime="{{ .Post.Date }}">{{ postDate .Post }}</time>
            <div>{{ .Post.Category }}</div>
        </div>
        {{- if .Post.Tags }}
        <div class="flex gap-2 mt-4">
            {{- range .Post.Tags }}
            <span class="bg-gray-100 px-2 py-1 rounded text-sm">{{ . }}</span>
            {{- end }}
        </div>
        {{- end }}
    </header>
    <div class="prose prose-lg max-w-none">
        {{ safeHTML .Post.Content }}
    </div>
</article>
{{ end }}`

const notFoundTemplate = `{{ define "main" }}
<div class="max-w-4xl mx-auto p-8">
    <h1 class="text-4xl font-bold mb-4">{{ .Meta.Title }}</h1>
    <p class="text-gray-600"><a href="/" class="underline">{{ .Site.Title }}</a></p>
</div>
{{ end }}`
