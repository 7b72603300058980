// Package request contains the ServiceRequest aggregate and the values it is
// built from: address lines, the details blob, verification codes and the
// dispatch marker that drives background broadcast recovery.
package request
