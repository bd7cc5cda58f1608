package markup

const gridPlaceholder = `<div class="card skeleton h-48">` +
	`<div class="bar h-24"></div>` +
	`<div class="bar h-4 w-3-4 mt-3"></div>` +
	`<div class="bar h-3 w-2-3 mt-2"></div>` +
	`</div>`

const listPlaceholder = `<li class="card skeleton">` +
	`<div class="bar h-4 w-3-4"></div>` +
	`<div class="bar h-3 w-1-3 mt-2"></div>` +
	`</li>`

const profilePlaceholder = `<div class="avatar skeleton"></div>` +
	`<div>` +
	`<div class="bar skeleton h-4 w-40 mb-2"></div>` +
	`<div class="bar skeleton h-3 w-28"></div>` +
	`</div>`

// LoaderGrid returns n card placeholders.
func LoaderGrid(n int) string { return Repeat(gridPlaceholder, n) }

// LoaderList returns n list-item placeholders.
func LoaderList(n int) string { return Repeat(listPlaceholder, n) }

// SkeletonProfile returns the avatar-and-lines placeholder.
func SkeletonProfile() string { return profilePlaceholder }
