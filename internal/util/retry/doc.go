// Package retry provides bounded exponential backoff for operations that can
// fail transiently, such as throttled AWS API calls. Errors wrapped with
// [Permanent] stop the loop immediately.
package retry
