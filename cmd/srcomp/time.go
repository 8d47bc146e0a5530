package main

import "time"

// nowFunc is the CLI's wall-clock source; a var so a future --at flag or a
// test can override it without touching call sites.
var nowFunc = time.Now
