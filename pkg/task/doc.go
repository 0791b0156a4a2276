// Package task provides tasks with dependencies whose dispatch to a worker
// pool is postponed until every prerequisite has finished.
//
// A submitted task carries a typed result that downstream tasks capture and
// read once their own callable runs. Dependencies form a directed acyclic
// graph of shared handles; cycles are a caller error and are not detected. A
// Group counts the tasks submitted through it, so that a single Join waits
// for all of them.
//
// Failing callables complete normally from the graph's point of view:
// dependents still run, and the failure surfaces wherever the result is read
// with Get or GetValue.
package task
