/*
testsuite is meant to be run by implementors of backends to ensure that the behaviors of their backend matches the
expected behavior of the doclib.Session interface.  Note you may need to pass additional environmental variables for
authentication.

The mem and os backends run it on every test run; gs runs it against an in-process fake server.  Remote backends run it
behind the doclibintegration build tag:

	DOCLIB_INTEGRATION_URI="s3://my-bucket/doclib_test/" \
	AWS_REGION=us-west-2 \
	go test -tags doclibintegration ./backend/s3
*/
package testsuite
