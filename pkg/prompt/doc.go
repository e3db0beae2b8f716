// Package prompt fills a form interactively. A Driver asks one question per
// field; Fill collects the answers as params ready for form.Process. The
// default driver is backed by AlecAivazis/survey.
package prompt
