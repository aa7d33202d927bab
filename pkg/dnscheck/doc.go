// Package dnscheck verifies that committed DNS changes are actually served
// by an authoritative nameserver.
//
// Zone changes staged over the API only reach the nameservers after a
// commit, and the commit itself is processed asynchronously. The checker
// asks a nameserver directly, bypassing resolver caches, so a deployment
// script can block until a record is really visible:
//
//	checker := dnscheck.NewChecker("")
//
//	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
//	defer cancel()
//
//	err := checker.WaitFor(ctx, "www.example.com", "A", "192.0.2.10", 10*time.Second)
//	if err != nil {
//	    return err
//	}
//
// Queries are sent without the recursion bit, matching what an
// authoritative server expects.
package dnscheck
