package mcpserver

// AddressGrammar documents the address forms accepted by resolve_address
// and by links inside page bodies.
const AddressGrammar = `# Raido Address Grammar

An address names a location, entity, or asset inside the site tree, or an
external URL. Addresses are parsed with a kind (entity, page, image,
style, script) and are total: every string produces some pointer.

## Forms

| Address | Meaning |
|---|---|
| ` + "`" + `` + "`" + ` (empty) | the place the address is used from |
| ` + "`" + `.` + "`" + ` | the current directory |
| ` + "`" + `/` + "`" + ` | the site root |
| ` + "`" + `name` + "`" + ` | search for "name" from here downwards |
| ` + "`" + `/name` + "`" + ` | search for "name" anywhere in the site |
| ` + "`" + `a/name` + "`" + ` | search for "name" under the child directory "a" |
| ` + "`" + `name/` + "`" + ` | the directory "name" itself |
| ` + "`" + `../name` + "`" + ` | search for "name" from the parent directory |
| ` + "`" + `style.css` + "`" + ` | the canonical stylesheet of this directory (style kind) |
| ` + "`" + `a/` + "`" + ` with an asset kind | "the" asset of that directory (canonical token) |
| ` + "`" + `https://…` + "`" + `, ` + "`" + `mailto:…` + "`" + `, ` + "`" + `//host/x` + "`" + ` | external, kept verbatim |

## Names

Search names are canonical: lowercase, runs of non-alphanumerics become a
single hyphen ("Getting Started!" matches ` + "`" + `getting-started` + "`" + `).
Pages match by their directory name, their frontmatter title, and every
alias in the ` + "`" + `titles` + "`" + ` list.

## Canonical asset files

| Kind | Canonical file | Recognized extensions |
|---|---|---|
| page | page.html | html, htm |
| image | image.png | png, jpg, jpeg, gif, svg, webp |
| style | style.css | css |
| script | script.js | js, mjs |

## Page source format

` + "```" + `markdown
---
title: Human-readable title     # primary display title, extra lookup key
titles:                         # OPTIONAL alias lookup keys
  - alias-one
kind: article                   # OPTIONAL: article (default) or section
tags:                           # OPTIONAL
  - tag-one
---

Body text in standard Markdown.
` + "```" + `

A directory's own page is its ` + "`" + `index.md` + "`" + `; any other
` + "`" + `name.md` + "`" + ` becomes the page ` + "`" + `name/` + "`" + ` in
that directory. Assets (css, js, images) live next to the sources and are
addressed with the asset kinds above.
`
